package main

import (
	"fmt"
	"log"

	"github.com/muesli/coral"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/pkg/errors"
)

func main() {
	c := &coral.Command{
		Use:   "rmuser DATABASE USERNAME",
		Short: "Remove a user and their media records from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := database.StormOpen(args[0])
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			// Fetch user
			user, err := db.FindUserByUsername(args[1])
			if err != nil {
				if db.IsNotFound(err) {
					fmt.Println("No account for this username")
					return nil
				}
				return errors.Wrap(err, "find user by username")
			}

			fmt.Println("User found:", user.ID)

			// Deleting user's media records
			// The stored payloads stay on disk, keyed by record UUID.
			media, err := db.FindMediaByUserID(user.ID)
			if err != nil {
				return errors.Wrap(err, "list user media")
			}
			for _, m := range media {
				if err := db.Delete(m); err != nil && !db.IsNotFound(err) {
					return errors.Wrap(err, "delete media")
				}
			}
			fmt.Printf("%d media record(s) removed\n", len(media))

			// Delete user
			if err := db.Delete(user); err != nil && !db.IsNotFound(err) {
				return errors.Wrap(err, "delete user")
			}
			fmt.Println("User removed")

			return nil
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
