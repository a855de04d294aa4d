package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clir/internal/corpus"
	"github.com/kailas-cloud/clir/internal/domain"
	"github.com/kailas-cloud/clir/internal/usecase/eval"
	"github.com/kailas-cloud/clir/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clir",
		Short: "Cross-language information retrieval over a fixed corpus",
		Long: `clir answers queries in any language against an English corpus.

A query is translated to the pivot language, ranked with a TF-IDF
vector-space model under cosine similarity, and the top hit is optionally
translated back to a display language.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newReplCmd(),
		newSearchCmd(),
		newIndexCmd(),
		newEvalCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clir %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

func newReplCmd() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Println("Cross-Language Information Retrieval")
			fmt.Println("Enter a query in any language. Type 'exit' to quit.")
			fmt.Println()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Print("Query: ")
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}
				query := strings.TrimSpace(scanner.Text())

				switch strings.ToLower(query) {
				case "exit", "quit", "q":
					return nil
				case "":
					fmt.Println("Please enter a valid query.")
					fmt.Println()
					continue
				}

				result, err := a.search.Search(context.Background(), query, topK)
				if err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}
				printResult(result)
			}
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of results (default from config)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		topK    int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a single query and print the ranked results",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.search.Search(context.Background(), args[0], topK)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			printResult(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of results (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the TF-IDF index from the corpus file and save it",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := rebuildIndex(a)
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d documents to %s\n", n, a.cfg.Retrieval.IndexPath)
			return nil
		},
	}
}

// rebuildIndex re-reads the corpus file and replaces the saved manifest.
// buildApp may have restored a manifest written before the corpus file
// changed, so the documents must come from the file, not the loaded index.
func rebuildIndex(a *app) (int, error) {
	docs, err := corpus.Load(a.cfg.Retrieval.CorpusPath, a.logger)
	if err != nil {
		return 0, err
	}
	if err := a.retriever.Build(docs); err != nil {
		return 0, err
	}
	if err := a.retriever.Save(a.cfg.Retrieval.IndexPath); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func newEvalCmd() *cobra.Command {
	var (
		queriesPath string
		topK        int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate retrieval quality against labeled queries",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := os.ReadFile(queriesPath)
			if err != nil {
				return fmt.Errorf("read queries %s: %w", queriesPath, err)
			}
			var queries []eval.LabeledQuery
			if err := json.Unmarshal(data, &queries); err != nil {
				return fmt.Errorf("parse queries: %w", err)
			}

			metrics, err := eval.New(a.retriever).EvaluateBatch(context.Background(), queries, topK)
			if err != nil {
				return err
			}

			for _, name := range eval.MetricNames(metrics) {
				fmt.Printf("%-18s %.4f\n", name, metrics[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&queriesPath, "file", "f", "data/eval_queries.json", "Labeled queries JSON file")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 5, "Number of results per query")
	return cmd
}

func printResult(result domain.QueryResult) {
	if result.Translated != result.Original {
		fmt.Printf("Translated query: %s\n", result.Translated)
	}

	if len(result.Results) == 0 {
		fmt.Println("No relevant documents found.")
		fmt.Println()
		return
	}

	fmt.Println("Top retrieved documents:")
	for rank, r := range result.Results {
		doc := r.Document
		if runes := []rune(doc); len(runes) > 200 {
			doc = string(runes[:200]) + "..."
		}
		fmt.Printf("%2d. [%.3f] %s\n", rank+1, r.Score, doc)
	}
	if result.TranslatedTop != "" {
		fmt.Printf("Top result (translated): %s\n", result.TranslatedTop)
	}
	fmt.Println()
}
