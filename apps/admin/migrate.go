package main

import (
	"github.com/scngmai/damayan/storage/database"
)

var migrateRunFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateRunFunc(args[0], cli.db.DB, arguments...)
}
