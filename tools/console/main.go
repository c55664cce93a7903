package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/newsdeskhq/newsdesk/internal/database"
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/pkg/stormql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go newsdesk.db " SELECT count(*) FROM items WHERE State = 'spiked' AND UpdatedAt > '2026-02-16 20:52:55';  "
// Without a SQL statement, prints the newsroom report.

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE [SQL]",
		Short: "SQL console and newsroom report for newsdesk database",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			if len(args) == 1 {
				return report(db)
			}

			//
			//
			sc, err := stormql.ParseSelect(args[1])
			if err != nil {
				return err
			}

			//
			// Prepare request
			//

			query := db.Select(sc.Matcher)
			if sc.Skip > 0 {
				query.Skip(sc.Skip)
			}
			if sc.Limit > 0 {
				query.Limit(sc.Limit)
			}
			if len(sc.OrderBy) > 0 {
				query.OrderBy(sc.OrderBy...)
				if sc.OrderByReversed {
					query.Reverse()
				}
			}

			// Execute

			if sc.Count {
				return count(sc, query)
			}

			return list(sc, query)
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// report prints item counts per state and the latest spiked items.
func report(db *storm.DB) error {
	fmt.Println("Newsroom report")

	for _, state := range []string{model.StateIngested, model.StateNormal, model.StateSpiked} {
		n, err := db.Select(q.Eq("State", state)).Count(&model.Item{})
		if err != nil {
			return errors.Wrap(err, "could not count items")
		}
		fmt.Printf("%10s: %d\n", state, n)
	}

	spiked := []*model.Item{}
	err := db.Select(q.Eq("State", model.StateSpiked)).OrderBy("UpdatedAt").Reverse().Limit(10).Find(&spiked)
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not list spiked items")
	}

	if len(spiked) > 0 {
		fmt.Println("Latest spiked:")
		for _, item := range spiked {
			fmt.Printf("  %s  %s  %s\n", item.ID, item.UpdatedAt.Format("2006-01-02 15:04"), item.Headline)
		}
	}

	return nil
}

func count(sc *stormql.SelectClause, query storm.Query) error {
	var records any
	switch sc.Tablename {
	case "users":
		records = &model.User{}
	case "items":
		records = &model.Item{}
	case "media":
		records = &model.Media{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	n, err := query.Count(records)

	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	fmt.Println("Count:", n)

	return nil
}

func list(sc *stormql.SelectClause, query storm.Query) error {
	var records any
	switch sc.Tablename {
	case "users":
		records = &[]*model.User{}
	case "items":
		records = &[]*model.Item{}
	case "media":
		records = &[]*model.Media{}
	default:
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	err := query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	jsondump(records)

	return nil
}

func jsondump(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}
