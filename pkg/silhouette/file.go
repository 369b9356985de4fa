package silhouette

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/yuletree/pkg/errors"
)

// Decode reads a TOML silhouette from r.
//
// A minimal file looks like:
//
//	name = "slim"
//	kind = "rounded"
//	center_x = 210
//
//	[viewbox]
//	width = 420
//	height = 580
//
//	[[tier]]
//	y_top = 40
//	y_bottom = 300
//	x_left = 120
//	x_right = 300
//
// Missing kind defaults to triangular. Unknown keys are rejected so that
// typos do not silently fall back to zero values. The decoded spec is
// validated before it is returned.
func Decode(r io.Reader) (Spec, error) {
	var s Spec
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidSilhouette, err, "decode silhouette")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Spec{}, errors.New(errors.ErrCodeInvalidSilhouette, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if s.Kind == "" {
		s.Kind = KindTriangular
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Load reads and decodes the silhouette file at path.
func Load(path string) (Spec, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Spec{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "silhouette %s", path)
		}
		return Spec{}, fmt.Errorf("open silhouette: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as TOML to w.
func Encode(w io.Writer, s Spec) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode silhouette: %w", err)
	}
	return nil
}

// Marshal returns the TOML encoding of s.
func Marshal(s Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
