package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/learnx/learnx/core/learn"
)

// suggestionsCmd projects the suggested edits onto a personalized file's text
// and accepts or dismisses them one by one.
func (cli *commandLine) suggestionsCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("suggestions")
	fileID := cmd.String("file", "", "Personalized file ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *fileID == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	_, parsed, err := cli.learning.Read(ctx, *fileID)
	if err != nil {
		return err
	}
	nodes := textNodes(parsed)
	if err := cli.overlays.Load(ctx, *fileID, acct.ID, nodes); err != nil {
		return err
	}

	highlights := cli.overlays.Highlights()
	if len(highlights) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for _, h := range highlights {
		if h.Span.IsZero() {
			fmt.Printf("(unmatched) %q -> %q\n", h.Suggestion.OriginalText, h.Suggestion.SuggestedText)
		} else {
			fmt.Printf("%q -> %q\n", h.Suggestion.OriginalText, h.Suggestion.SuggestedText)
		}
		fmt.Print("Accept? (y/n) ")
		line, _ := reader.ReadString('\n')
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			if err := cli.overlays.Apply(h.Suggestion.ID); err != nil {
				return err
			}
		} else {
			if err := cli.overlays.Dismiss(h.Suggestion.ID); err != nil {
				return err
			}
		}
	}

	fmt.Println("--- result ---")
	for _, node := range cli.overlays.Nodes() {
		fmt.Println(node)
	}
	return nil
}

// textNodes flattens parsed content into the per-block text the overlay
// projects onto, mirroring how the reader renders one node per block.
func textNodes(c learn.Content) []string {
	var nodes []string
	for _, ch := range c.Chapters {
		if ch.Summary != "" {
			nodes = append(nodes, ch.Summary)
		}
		for _, sub := range ch.Subsections {
			if sub.Text != "" {
				nodes = append(nodes, sub.Text)
			}
		}
	}
	return nodes
}
