package shell_test

import (
	"fmt"

	"github.com/matzehuels/yuletree/pkg/layout"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/shell"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

func ExampleShell_SelectItem() {
	msgs, _ := message.Seed("en")
	e := layout.ForSpec(silhouette.Default(), layout.DefaultOptions())
	b := shell.Bind(msgs, e)

	s := shell.New(shell.CelebratorFunc(func(b shell.Burst) error {
		fmt.Printf("burst at (%.2f, %.2f) with %d particles\n", b.OriginX, b.OriginY, b.ParticleCount)
		return nil
	}))

	s.SelectItem(*b.Star, shell.ClickEvent{TargetX: 640, TargetY: 72, ViewportWidth: 1280, ViewportHeight: 720})
	m, _ := s.Selected()
	fmt.Println(m.ID, m.Text)

	s.Dismiss()
	_, ok := s.Selected()
	fmt.Println("selected after dismiss:", ok)
	// Output:
	// burst at (0.50, 0.10) with 40 particles
	// 1 I love you
	// selected after dismiss: false
}
