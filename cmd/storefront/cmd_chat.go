package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/render"
)

const transcriptWidth = 80

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the shopping assistant",
		Long: `Opens the assistant widget and reads messages from stdin, one per line.

  /toggle  close or reopen the widget
  /quit    leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := middleware.EnsureCorrelationID(cmd.Context())

			session := a.chatSession(func(m chat.Message) {
				fmt.Fprintln(a.out, render.MessageTerminal(m, transcriptWidth))
			})
			session.Open(ctx)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := scanner.Text()
				switch strings.TrimSpace(line) {
				case "/quit":
					return nil
				case "/toggle":
					if !session.Open(ctx) {
						fmt.Fprintln(a.out, "(chat closed, /toggle to reopen)")
					}
					continue
				}
				if !session.Visible() {
					continue
				}
				session.SetInput(line)
				session.SendInput(ctx)
			}
			return scanner.Err()
		},
	}
}
