package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bucketlist/internal/app"
	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/edit"
	"github.com/idilsaglam/bucketlist/internal/filter"
	"github.com/idilsaglam/bucketlist/internal/model"
	"github.com/idilsaglam/bucketlist/internal/ui"
)

func newListCmd(a *App) *cobra.Command {
	var (
		tag   string
		group bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := filter.Parse(tag)
			if err != nil {
				return usagef("%v", err)
			}
			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st.SetFilter(t)
			ui.Panel(cmd.OutOrStdout(), listLines(st, group))
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "filter", "f", "all", "Show all|pending|completed")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group output by pending/completed")
	return cmd
}

func newAddCmd(a *App) *cobra.Command {
	var description, location, priority string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return usagef("%v", err)
			}
			d := model.Draft{
				Title:       strings.Join(args, " "),
				Description: description,
				Location:    location,
				Priority:    p,
			}
			if err := d.Validate(); err != nil {
				return usagef("add: %v", err)
			}

			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			it, err := st.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			return a.report(cmd, st, "added "+it.Title)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer description")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Where it happens")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "low|medium|high")
	return cmd
}

func newEditCmd(a *App) *cobra.Command {
	values := map[edit.Field]*string{}
	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change an item's title, description, location or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changed []edit.Field
			for _, f := range edit.Fields {
				if cmd.Flags().Changed(string(f)) {
					changed = append(changed, f)
				}
			}
			if len(changed) == 0 {
				return usagef("edit: nothing to change (use --title, --description, --location or --priority)")
			}

			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := resolveRef(st.Items(), args[0])
			if err != nil {
				return err
			}
			if err := st.StartEdit(id); err != nil {
				return err
			}
			for _, f := range changed {
				if err := st.UpdateDraft(f, *values[f]); err != nil {
					st.CancelEdit()
					return usagef("edit: %v", err)
				}
			}
			it, err := st.CommitEdit(cmd.Context())
			if err != nil {
				return usagef("edit: %v", err)
			}
			return a.report(cmd, st, "updated "+it.Title)
		},
	}
	for _, f := range edit.Fields {
		v := new(string)
		values[f] = v
		cmd.Flags().StringVar(v, string(f), "", "New "+string(f))
	}
	return cmd
}

func newDoneCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle completion of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := resolveRef(st.Items(), args[0])
			if err != nil {
				return err
			}
			if err := st.ToggleCompleted(cmd.Context(), id); err != nil {
				return err
			}
			it, _ := st.Get(id)
			msg := "marked pending"
			if it.Completed {
				msg = "completed"
			}
			return a.report(cmd, st, msg+": "+it.Title)
		},
	}
}

func newRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := resolveRef(st.Items(), args[0])
			if err != nil {
				return err
			}
			if err := st.Remove(cmd.Context(), id); err != nil {
				return err
			}
			return a.report(cmd, st, "removed")
		},
	}
}

func newAttachCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <ref> <image>",
		Short: "Upload an image and attach it to an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := attach.FromPath(args[1])
			if err != nil {
				return usagef("attach: %v", err)
			}

			st, closeFn, err := a.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := resolveRef(st.Items(), args[0])
			if err != nil {
				return err
			}
			ref, err := st.AttachImage(cmd.Context(), id, f)
			if err != nil {
				return err
			}
			return a.report(cmd, st, "image attached: "+ref)
		},
	}
}

// report prints msg and surfaces where the change went.
func (a *App) report(cmd *cobra.Command, st *app.App, msg string) error {
	if err := st.SyncErr(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(cmd.OutOrStdout(), msg)
	if !st.WriteThrough() {
		ui.Warn(cmd.ErrOrStderr(), "local-only mode: change was not saved")
	}
	return nil
}

// resolveRef turns a 1-based index or an item id (or unique id prefix) into
// an id.
func resolveRef(items []model.BucketItem, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", usagef("empty item reference")
	}
	n, numErr := strconv.Atoi(ref)
	if numErr == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID, nil
	}

	var match []string
	for _, it := range items {
		if it.ID == ref {
			return it.ID, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			match = append(match, it.ID)
		}
	}
	switch len(match) {
	case 0:
		if numErr == nil {
			return "", usagef("index out of range: have %d, got %d (run `bucketlist ls` to see valid indexes)", len(items), n)
		}
		return "", fmt.Errorf("%s: %w", ref, model.ErrNotFound)
	case 1:
		return match[0], nil
	}
	return "", usagef("ambiguous reference %q matches %d items", ref, len(match))
}
