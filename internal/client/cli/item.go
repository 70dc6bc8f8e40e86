package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itemvault/internal/client/client"
)

// List prints all items, newest first (the server enforces the order).
func (a *App) List(ctx context.Context) {
	items, err := a.api.ListItems(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "no items")
		return
	}
	for _, item := range items {
		fmt.Fprintln(a.out, formatItem(&item))
	}
}

// Add prompts for a name and an optional description and creates an item.
func (a *App) Add(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading name: %s\n", err)
		return
	}

	descText, err := GetSimpleText(a.reader, "Enter description (empty to skip)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading description: %s\n", err)
		return
	}
	var description *string
	if descText != "" {
		description = &descText
	}

	item, err := a.api.CreateItem(ctx, name, description)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}
	fmt.Fprintf(a.out, "created %s\n", item.ID)
}

// Show prints a single item.
func (a *App) Show(ctx context.Context, id string) {
	item, err := a.api.GetItem(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}
	fmt.Fprintln(a.out, formatItem(item))
}

// Update prompts for the replacement name and description of an item.
func (a *App) Update(ctx context.Context, id string) {
	name, err := GetSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading name: %s\n", err)
		return
	}

	descText, err := GetSimpleText(a.reader, "Enter new description (empty to clear)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading description: %s\n", err)
		return
	}
	var description *string
	if descText != "" {
		description = &descText
	}

	item, err := a.api.UpdateItem(ctx, id, name, description)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}
	fmt.Fprintf(a.out, "updated %s\n", item.ID)
}

// Delete removes an item.
func (a *App) Delete(ctx context.Context, id string) {
	if err := a.api.DeleteItem(ctx, id); err != nil {
		fmt.Fprintf(a.out, "error: %s\n", err)
		return
	}
	fmt.Fprintf(a.out, "deleted %s\n", id)
}

func formatItem(item *client.Item) string {
	desc := ""
	if item.Description != nil {
		desc = " - " + *item.Description
	}
	return fmt.Sprintf("%s  %s%s  (updated %s)",
		item.ID, item.Name, desc, item.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}
