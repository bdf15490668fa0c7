// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/tasktree"
)

func ExampleTask() {
	tree := tasktree.New()

	res, err := tasktree.Task(context.Background(), tree, "build", func(ctx context.Context, api *tasktree.API) (int, error) {
		api.SetStatus("compiling")
		return 42, nil
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Value, res.State())
	// Output: 42 success
}

func ExampleTask_nested() {
	tree := tasktree.New()

	_, err := tasktree.Task(context.Background(), tree, "release", func(ctx context.Context, api *tasktree.API) (string, error) {
		_, err := tasktree.Task(ctx, api, "tag", func(ctx context.Context, api *tasktree.API) (string, error) {
			api.SetWarning(tasktree.Text("tag already exists"))
			return "v1.2.0", nil
		})
		return "done", err
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, snap := range tree.Snapshot() {
		fmt.Println(snap.Title, snap.State)
		for _, child := range snap.Children {
			fmt.Printf("  %s %s: %s\n", child.Title, child.State, child.Output)
		}
	}
	// Output:
	// release success
	//   tag warning: tag already exists
}

func ExampleGroup() {
	tree := tasktree.New()

	results, err := tasktree.Group(context.Background(), tree, func(task tasktree.Registrar[string]) []*tasktree.Registration[string] {
		return []*tasktree.Registration[string]{
			task("fetch a", func(context.Context, *tasktree.API) (string, error) { return "a", nil }),
			task("fetch b", func(context.Context, *tasktree.API) (string, error) { return "b", nil }),
			task("fetch c", func(context.Context, *tasktree.API) (string, error) { return "c", nil }),
		}
	}, tasktree.WithConcurrency(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(results.Values())
	results.Clear()
	fmt.Println(tree.Len())
	// Output:
	// [a b c]
	// 0
}

func ExampleGroup_stopOnError() {
	tree := tasktree.New()

	results, err := tasktree.Group(context.Background(), tree, func(task tasktree.Registrar[int]) []*tasktree.Registration[int] {
		return []*tasktree.Registration[int]{
			task("a", func(context.Context, *tasktree.API) (int, error) { return 0, errors.New("a failed") }),
			task("b", func(context.Context, *tasktree.API) (int, error) { return 1, nil }),
		}
	})

	fmt.Println(err)
	for _, res := range results {
		fmt.Println(res.Node().Title(), res.State())
	}
	// Output:
	// a failed
	// a error
	// b pending
}
