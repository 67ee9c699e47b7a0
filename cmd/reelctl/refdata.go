package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	genresCmd := &cobra.Command{Use: "genres", Short: "Genre reference data"}

	genresListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/genres", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	genresCmd.AddCommand(genresListCmd)

	genresGetCmd := &cobra.Command{
		Use:   "get GENRE_ID",
		Short: "Get genre by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/genres/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	genresCmd.AddCommand(genresGetCmd)

	rootCmd.AddCommand(genresCmd)

	mpaCmd := &cobra.Command{Use: "mpa", Short: "MPA rating reference data"}

	mpaListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all MPA ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/mpa", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	mpaCmd.AddCommand(mpaListCmd)

	mpaGetCmd := &cobra.Command{
		Use:   "get RATING_ID",
		Short: "Get MPA rating by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/mpa/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	mpaCmd.AddCommand(mpaGetCmd)

	rootCmd.AddCommand(mpaCmd)
}
