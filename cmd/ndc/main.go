package main

import (
	"fmt"
	"os"

	"github.com/newsdeskhq/newsdesk/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "ndc",
		Short:   "Newsdesk workflow client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(spikeCmd)
	c.AddCommand(unspikeCmd)
	c.AddCommand(fetchCmd)
	c.AddCommand(uploadCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	endpoint string
	username string
	desk     string

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the newsdesk server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Login(endpoint, username, desk)
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from a newsdesk server session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Logout()
		},
	}

	spikeCmd = &cobra.Command{
		Use:   "spike UUID",
		Short: "Withdraw an archive item from circulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Spike(args[0])
		},
	}

	unspikeCmd = &cobra.Command{
		Use:   "unspike UUID",
		Short: "Restore a spiked archive item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Unspike(args[0])
		},
	}

	fetchCmd = &cobra.Command{
		Use:   "fetch GUID",
		Short: "Fetch an ingest item onto your desk",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Fetch(args[0])
		},
	}

	uploadCmd = &cobra.Command{
		Use:   "upload FILENAME",
		Short: "Upload a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Upload(args[0])
		},
	}
)

func init() {
	loginCmd.Flags().StringVarP(&endpoint, "endpoint", "e", "http://localhost:5000", "Server endpoint")
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&desk, "desk", "d", "", "Desk to work on")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("desk")
}
