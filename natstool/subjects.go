package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fieldprobe/fieldprobe/pkg/common"
)

func listSubjectsCommand() *cobra.Command {
	var filterResponse bool

	cmd := &cobra.Command{
		Use:   "list-subjects",
		Short: "Print every distinct subject seen on the wire",
		Long: `Subscribe to the ">" wildcard and print each subject the first time a
message arrives on it, until the process is interrupted. --filter-response
hides the _INBOX subjects used internally for request/reply correlation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := common.SetupGracefulShutdown()
			defer cancel()

			nc, err := connect()
			if err != nil {
				return err
			}
			defer nc.Close()

			sub, err := nc.SubscribeSync(">")
			if err != nil {
				return fmt.Errorf("error subscribing to wildcard: %w", err)
			}

			seen := newSubjectSet(filterResponse)
			for {
				msg, err := sub.NextMsgWithContext(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("error while listing subjects: %w", err)
				}
				if seen.FirstSight(msg.Subject) {
					fmt.Println(msg.Subject)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&filterResponse, "filter-response", false, "Hide request/reply inbox subjects")

	return cmd
}

// subjectSet tracks which subjects have already been printed. It is touched
// by a single consumer loop, so no locking.
type subjectSet struct {
	filterInbox bool
	seen        map[string]struct{}
}

func newSubjectSet(filterInbox bool) *subjectSet {
	return &subjectSet{filterInbox: filterInbox, seen: map[string]struct{}{}}
}

// FirstSight reports whether subject should be printed now, recording it so
// later sightings return false.
func (s *subjectSet) FirstSight(subject string) bool {
	if s.filterInbox && strings.HasPrefix(subject, nats.InboxPrefix) {
		return false
	}
	if _, ok := s.seen[subject]; ok {
		return false
	}
	s.seen[subject] = struct{}{}
	return true
}
