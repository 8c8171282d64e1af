package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/atinylittleshell/compy/internal/completion"
	"github.com/atinylittleshell/compy/internal/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const longHelp = `compy - shell agnostic command completion

Prints one completion candidate per line for the partial WORD, like bash's
compgen builtin. Sources can be combined; their candidates are printed in
the order the sources are listed below, followed by -A actions, -G matches
and -W words.

A filter pattern (-X) removes the candidates it matches. Start it with "!"
to keep only the matching candidates instead.

Exit status is 0 even when nothing matches, and 1 on an invalid pattern.`

type rootFlags struct {
	command   bool
	file      bool
	directory bool
	export    bool
	variable  bool
	group     bool
	hostname  bool
	service   bool
	user      bool
	actions   []string

	wordList string
	glob     string
	prefix   string
	suffix   string
	filter   string
	quote    bool
	max      int
}

func newRootCmd(cfg *config.Config, env completion.Env) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "compy [flags] [word]",
		Short:         "Shell agnostic command completion",
		Long:          longHelp,
		Version:       BUILD_VERSION,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args)
			if err != nil {
				return err
			}
			req.Quote = req.Quote || cfg.Output.Quote

			candidates, err := completion.Generate(req, env)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for c := range candidates {
				fmt.Fprintln(w, c)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.command, "command", "c", false, "complete executables found on $PATH")
	f.BoolVarP(&flags.file, "file", "f", false, "complete file and directory names")
	f.BoolVarP(&flags.directory, "directory", "d", false, "complete directory names")
	f.BoolVarP(&flags.export, "export", "e", false, "complete exported environment variable names")
	f.BoolVarP(&flags.variable, "variable", "v", false, "complete variable names")
	f.BoolVarP(&flags.group, "group", "g", false, "complete group names")
	f.BoolVar(&flags.hostname, "hostname", false, "complete host names from /etc/hosts")
	f.BoolVarP(&flags.service, "service", "s", false, "complete service names from /etc/services")
	f.BoolVarP(&flags.user, "user", "u", false, "complete user names")
	f.StringArrayVarP(&flags.actions, "action", "A", nil,
		"complete with a named action, one of: "+strings.Join(completion.ActionNames(), ", "))

	f.StringVarP(&flags.wordList, "wordlist", "W", "", "complete from a whitespace separated word list")
	f.StringVarP(&flags.glob, "glob", "G", "", "complete file names matching a glob pattern")
	f.StringVarP(&flags.prefix, "prefix", "P", "", "add prefix to results")
	f.StringVarP(&flags.suffix, "suffix", "S", "", "add suffix to results")
	f.StringVarP(&flags.filter, "filter", "X", "", "exclude results matching the pattern, or keep only them with a leading !")
	f.BoolVarP(&flags.quote, "quote", "q", false, "shell-quote results that need it")
	f.IntVarP(&flags.max, "max", "n", 0, "stop after this many results (0 means no limit)")

	return cmd
}

func (f *rootFlags) request(args []string) (completion.Request, error) {
	req := completion.Request{
		WordList:      f.wordList,
		GlobPattern:   f.glob,
		Prefix:        f.prefix,
		Suffix:        f.suffix,
		FilterPattern: f.filter,
		Quote:         f.quote,
		Limit:         f.max,
	}
	if len(args) > 0 {
		req.Word = args[0]
	}

	selected := []struct {
		on     bool
		action completion.Action
	}{
		{f.command, completion.ActionCommand},
		{f.file, completion.ActionFile},
		{f.directory, completion.ActionDirectory},
		{f.export, completion.ActionExport},
		{f.variable, completion.ActionVariable},
		{f.group, completion.ActionGroup},
		{f.hostname, completion.ActionHostname},
		{f.service, completion.ActionService},
		{f.user, completion.ActionUser},
	}
	for _, s := range selected {
		if s.on {
			req.Actions = append(req.Actions, s.action)
		}
	}

	for _, name := range f.actions {
		action, err := completion.ParseAction(name)
		if err != nil {
			return completion.Request{}, err
		}
		req.Actions = append(req.Actions, action)
	}
	req.Actions = lo.Uniq(req.Actions)

	if f.max < 0 {
		return completion.Request{}, fmt.Errorf("--max must not be negative, got %d", f.max)
	}
	return req, nil
}
