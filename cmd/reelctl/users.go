package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// create
	var email, login, name, birthday string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"email":    email,
				"login":    login,
				"birthday": birthday,
			}
			if name != "" {
				payload["name"] = name
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&email, "email", "e", "", "User email (required)")
	createCmd.Flags().StringVarP(&login, "login", "l", "", "User login (required)")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Display name (defaults to login)")
	createCmd.Flags().StringVarP(&birthday, "birthday", "b", "", "Birthday, YYYY-MM-DD (required)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("login")
	_ = createCmd.MarkFlagRequired("birthday")
	usersCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(getCmd)

	// friends
	friendsCmd := &cobra.Command{
		Use:   "friends USER_ID",
		Short: "List a user's friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/friends", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(friendsCmd)

	befriendCmd := &cobra.Command{
		Use:   "befriend USER_ID FRIEND_ID",
		Short: "Add a friend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doPut(fmt.Sprintf("%s/api/users/%s/friends/%s", apiFlag, args[0], args[1]))
			return err
		},
	}
	usersCmd.AddCommand(befriendCmd)

	unfriendCmd := &cobra.Command{
		Use:   "unfriend USER_ID FRIEND_ID",
		Short: "Remove a friend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doDelete(fmt.Sprintf("%s/api/users/%s/friends/%s", apiFlag, args[0], args[1]))
			return err
		},
	}
	usersCmd.AddCommand(unfriendCmd)

	commonCmd := &cobra.Command{
		Use:   "common USER_ID OTHER_ID",
		Short: "List friends two users share",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/friends/common/%s", apiFlag, args[0], args[1]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(commonCmd)

	rootCmd.AddCommand(usersCmd)
}
