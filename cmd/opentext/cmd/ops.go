package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dshills/opentext/internal/app"
)

var (
	replaceCmd = opCommand("replace <pattern> <with>", "Replace every occurrence of a pattern", cobra.ExactArgs(2))
	trimCmd    = opCommand("trim [charset]", "Strip leading and trailing codepoints", cobra.MaximumNArgs(1))
	reverseCmd = opCommand("reverse", "Reverse the codepoint order", cobra.NoArgs)
	splitCmd   = opCommand("split [separator]", "Print each piece between separators on its own line", cobra.MaximumNArgs(1))
	sliceCmd   = opCommand("slice <from> [to]", "Keep the codepoints in [from, to); use -- before negative positions", cobra.RangeArgs(1, 2))
	countCmd   = opCommand("count <pattern>", "Count non-overlapping occurrences of a pattern", cobra.ExactArgs(1))
	indexCmd   = opCommand("index <pattern>", "Print the codepoint index of a pattern, or -1", cobra.ExactArgs(1))
	statsCmd   = opCommand("stats", "Describe the text and its storage", cobra.NoArgs)
)

var indexLast bool

func init() {
	trimCmd.Flags().String("chars", "", "codepoints to strip")
	trimCmd.Flags().Bool("unicode", false, "strip Unicode White_Space instead of --chars")
	bindConfig(trimCmd.Flags(), "chars", "trim.charset")
	bindConfig(trimCmd.Flags(), "unicode", "trim.unicode_whitespace")
	disablesConfig(trimCmd.Flags(), "chars", "trim.unicode_whitespace")

	splitCmd.Flags().String("sep", "", "separator")
	splitCmd.Flags().Bool("cull", false, "drop empty pieces")
	bindConfig(splitCmd.Flags(), "sep", "split.separator")
	bindConfig(splitCmd.Flags(), "cull", "split.cull_empty")

	indexCmd.Flags().BoolVar(&indexLast, "last", false, "find the last occurrence")
	indexCmd.RunE = func(cmd *cobra.Command, args []string) error {
		op, err := application.ParseOp("index", args)
		if err != nil {
			return err
		}
		if ix, ok := op.(app.IndexOp); ok {
			ix.Last = indexLast
			op = ix
		}
		return runOp(cmd, op)
	}

	rootCmd.AddCommand(replaceCmd, trimCmd, reverseCmd, splitCmd, sliceCmd, countCmd, indexCmd, statsCmd)
}
