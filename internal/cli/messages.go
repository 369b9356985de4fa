package cli

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/message"
	"github.com/matzehuels/yuletree/pkg/shell"
)

// messagesCommand creates the messages management command.
func (c *CLI) messagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "List or add messages in the configured store",
	}

	cmd.AddCommand(c.messagesListCommand())
	cmd.AddCommand(c.messagesAddCommand())

	return cmd
}

func (c *CLI) messagesListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runMessagesList(cmd.Context(), cfg, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON, as GET /messages does")

	return cmd
}

func (c *CLI) runMessagesList(ctx context.Context, cfg config.Config, asJSON bool) error {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	msgs, err := store.List(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		if msgs == nil {
			msgs = []message.Message{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(msgs)
	}

	if len(msgs) == 0 {
		printInfo("No messages")
		return nil
	}
	rows := make([][]string, len(msgs))
	for i, m := range msgs {
		star := ""
		if shell.IsLoveMessage(m.Text) {
			star = "★"
		}
		rows[i] = []string{strconv.Itoa(m.ID), star, m.Text}
	}
	printTable([]string{"ID", "", "Text"}, rows)
	printDetail("%d messages from the %s store", len(msgs), cfg.Store.Driver)
	return nil
}

func (c *CLI) messagesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Append a message",
		Long: `Append a message to the configured store.

The message gets the next free id and is shown on the next render. The
first message saying "I love you" goes on the star topper.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runMessagesAdd(cmd.Context(), cfg, strings.Join(args, " "))
		},
	}
}

func (c *CLI) runMessagesAdd(ctx context.Context, cfg config.Config, text string) error {
	if cfg.Store.Driver == config.StoreMemory {
		printWarning("The memory store forgets messages on exit; configure sqlite or mongo to keep them")
	}
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := store.Create(ctx, text)
	if err != nil {
		return err
	}
	printSuccess("Added message %s", StyleHighlight.Render(strconv.Itoa(m.ID)))
	printDetail("%s", m.Text)
	return nil
}
