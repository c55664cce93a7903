package workflow

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/newsdeskhq/newsdesk/pkg/libnd"
	"github.com/pkg/errors"
)

// Login authenticates against the newsdesk server and stores the sealed
// credentials in the current directory.
func Login(endpoint, username, desk string) error {
	password, err := readline.Password("password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	client, err := libnd.NewDefaultClient(endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach newsdesk endpoint")
	}

	if err := client.Login(username, string(password)); err != nil {
		return errors.Wrap(err, "could not login")
	}

	err = Save(Config{
		Endpoint:    endpoint,
		Username:    username,
		BearerToken: client.BearerToken(),
		Desk:        desk,
	})
	if err != nil {
		return err
	}

	fmt.Println("Logged in as " + username)
	return nil
}

// Logout removes the stored credentials.
func Logout() error {
	err := Remove()
	if os.IsNotExist(errors.Cause(err)) {
		return nil
	}
	return err
}
