package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/seqlab-ml/seqlab/internal/corpus"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print corpus statistics: sample counts, vocabulary size, tag inventory",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: seqlab inspect FILE")
			}
			return runInspect(path)
		},
	}
}

func runInspect(path string) error {
	samples, err := corpus.Load(path)
	if err != nil {
		return err
	}

	vocab := corpus.BuildVocabulary(samples)
	labels := corpus.BuildLabelEncoder(samples)

	totalTokens := 0
	longest := 0
	tagCounts := make(map[string]int)
	for _, s := range samples {
		totalTokens += len(s.Tokens)
		if len(s.Tokens) > longest {
			longest = len(s.Tokens)
		}
		for _, tag := range s.Tags {
			tagCounts[tag]++
		}
	}

	fmt.Printf("samples:    %d\n", len(samples))
	fmt.Printf("tokens:     %d (longest sentence %d)\n", totalTokens, longest)
	fmt.Printf("vocabulary: %d entries including %s and %s\n",
		vocab.Size(), corpus.PadToken, corpus.UnkToken)
	fmt.Printf("labels:     %d\n", labels.NumLabels())

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  code\ttag\tcount")
	for _, name := range labels.Labels() {
		code, err := labels.Encode(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "  %d\t%s\t%d\n", code, name, tagCounts[name])
	}
	return tw.Flush()
}
