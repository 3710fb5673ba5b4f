package fglob_test

import (
	"context"
	"fmt"
	"io"

	"github.com/gruntwork-io/fglob/internal/vfs"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/fglob"
	"github.com/gruntwork-io/fglob/pkg/log"
)

func ExampleFind() {
	fs := vfs.NewMemMapFS()
	_ = vfs.CreateTree(fs, "/repo", "src/main.go", "src/main_test.go", "src/vendor/lib/lib.go", "README.md")

	opts := options.NewOptions()
	opts.FS = fs
	opts.Cwd = "/repo"
	opts.Logger = log.New(log.WithOutput(io.Discard))

	entries, err := fglob.Find(context.Background(), []string{"src/**/*.go", "!**/*_test.go", "!src/vendor/**"}, opts)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, entry := range entries {
		fmt.Println(entry.Path())
	}

	// Output:
	// src/main.go
}

// A directory exclusion such as !a/tmp/** belongs to the task of its parent directory, a.
func ExampleTasks() {
	tasks, err := fglob.Tasks([]string{"a/**/*", "b/**/*", "!**/*.txt", "!a/tmp/**"}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, task := range tasks {
		fmt.Println(task.Base, task.Patterns)
	}

	// Output:
	// a [a/**/* !**/*.txt !a/tmp]
	// b [b/**/* !**/*.txt]
}
