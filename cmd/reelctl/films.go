package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	filmsCmd := &cobra.Command{Use: "films", Short: "Film operations"}

	// create
	var name, description, releaseDate string
	var duration int
	var mpaID int64
	var genreIDs []int64
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a film",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"name":        name,
				"releaseDate": releaseDate,
				"duration":    duration,
			}
			if description != "" {
				payload["description"] = description
			}
			if mpaID > 0 {
				payload["mpa"] = map[string]interface{}{"id": mpaID}
			}
			if len(genreIDs) > 0 {
				genres := make([]map[string]interface{}, 0, len(genreIDs))
				for _, id := range genreIDs {
					genres = append(genres, map[string]interface{}{"id": id})
				}
				payload["genres"] = genres
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/films", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Film name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Film description")
	createCmd.Flags().StringVarP(&releaseDate, "release-date", "r", "", "Release date, YYYY-MM-DD (required)")
	createCmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (required)")
	createCmd.Flags().Int64Var(&mpaID, "mpa", 0, "MPA rating id")
	createCmd.Flags().Int64SliceVar(&genreIDs, "genres", nil, "Genre ids")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("release-date")
	_ = createCmd.MarkFlagRequired("duration")
	filmsCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get FILM_ID",
		Short: "Get film by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/films/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	filmsCmd.AddCommand(getCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all films",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/films", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	filmsCmd.AddCommand(listCmd)

	// popular
	var count int
	popularCmd := &cobra.Command{
		Use:   "popular",
		Short: "List the most liked films",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/films/popular?count=%d", apiFlag, count))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	popularCmd.Flags().IntVarP(&count, "count", "c", 10, "Number of films to return")
	filmsCmd.AddCommand(popularCmd)

	// like / unlike
	likeCmd := &cobra.Command{
		Use:   "like FILM_ID USER_ID",
		Short: "Like a film as a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doPut(fmt.Sprintf("%s/api/films/%s/like/%s", apiFlag, args[0], args[1]))
			return err
		},
	}
	filmsCmd.AddCommand(likeCmd)

	unlikeCmd := &cobra.Command{
		Use:   "unlike FILM_ID USER_ID",
		Short: "Withdraw a like",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doDelete(fmt.Sprintf("%s/api/films/%s/like/%s", apiFlag, args[0], args[1]))
			return err
		},
	}
	filmsCmd.AddCommand(unlikeCmd)

	rootCmd.AddCommand(filmsCmd)
}
