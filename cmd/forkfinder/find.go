// cmd/forkfinder/find.go
package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"forkfinder/internal/forksort"
	"forkfinder/internal/session"
)

// errFetchFailed is returned once the fetch error has been shown to the user.
var errFetchFailed = errors.New("fetch failed")

func newFindCmd() *cobra.Command {
	var sortKeys []string

	cmd := &cobra.Command{
		Use:   "find owner/name",
		Short: "Find the forks of a repository",
		Long: `Find lists up to 100 forks of a repository, most starred first, and prints
them as a table.

Each --sort selects a column the way clicking its header does: selecting the
active column again flips the order to descending.`,
		Example: `  forkfinder find octocat/Hello-World
  forkfinder find octocat/Hello-World --sort stars --sort stars`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]forksort.Key, 0, len(sortKeys))
			for _, s := range sortKeys {
				k, err := forksort.ParseKey(s)
				if err != nil {
					return err
				}
				keys = append(keys, k)
			}

			a, err := newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			s := session.New(a.finder, a.logger)
			st := s.Submit(cmd.Context(), args[0])
			if st.ErrorMessage != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), st.ErrorMessage)
				return errFetchFailed
			}
			for _, k := range keys {
				st = s.Sort(k)
			}

			return printTable(cmd.OutOrStdout(), st)
		},
	}

	cmd.Flags().StringArrayVar(&sortKeys, "sort", nil, "column to sort by, repeatable (name, stars, forks, lastUpdated, openIssues, watchers, createdAt, size, language, description, url)")
	return cmd
}

func printTable(w io.Writer, st session.State) error {
	if st.Sort.Key != forksort.KeyNone {
		fmt.Fprintf(w, "Sorted by %s (%s)\n\n", st.Sort.Key, st.Sort.Direction)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARS\tFORKS\tLAST UPDATED\tOPEN ISSUES\tWATCHERS\tCREATED\tSIZE (KB)\tLANGUAGE\tDESCRIPTION\tURL")
	for _, r := range st.Results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\n",
			r.Name, r.Stars, r.Forks, formatDate(r.LastUpdated), r.OpenIssues, r.Watchers,
			formatDate(r.CreatedAt), r.Size, orDash(r.Language), orDash(r.Description), r.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d forks\n", len(st.Results))
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateOnly)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
