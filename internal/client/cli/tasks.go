package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/taskyhq/tasky-be/internal/models"
)

// Each list view fetches its own filtered collection every time it runs;
// there is no client-side cache.

// ListActive shows the active task list.
func (a *App) ListActive(ctx context.Context) error {
	return a.listTasks(ctx, models.StatusActive)
}

// ListCompleted shows the completed task list.
func (a *App) ListCompleted(ctx context.Context) error {
	return a.listTasks(ctx, models.StatusCompleted)
}

// ListTrash shows the trashed task list.
func (a *App) ListTrash(ctx context.Context) error {
	return a.listTasks(ctx, models.StatusTrash)
}

func (a *App) listTasks(ctx context.Context, status string) error {
	tasks, err := a.client.ListTasks(ctx, status)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(tasks) == 0 {
		printlnFn("No tasks.")
		return nil
	}
	for i, t := range tasks {
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("%2d. [%s] %s  (%s)", i+1, mark, t.Title, t.ID))
	}
	return nil
}

// Add creates a new task.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title")
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)")
	if err != nil {
		return err
	}

	task, err := a.client.CreateTask(ctx, title, description)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Created task " + task.ID)
	return nil
}

// Show prints a single task.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Task ID")
	if err != nil {
		return err
	}
	task, err := a.client.GetTask(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Title:       " + task.Title)
	printlnFn("Description: " + task.Description)
	printlnFn(fmt.Sprintf("Completed:   %v", task.IsCompleted))
	printlnFn(fmt.Sprintf("In trash:    %v", task.IsDeleted))
	printlnFn("Created:     " + task.DateCreated.Local().String())
	printlnFn("Updated:     " + task.DateUpdated.Local().String())
	return nil
}

// Edit updates title and/or description. An empty answer leaves the field
// unchanged; "-" clears the description.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Task ID")
	if err != nil {
		return err
	}
	titleIn, err := getSimpleText(a.reader, "New title (empty = keep)")
	if err != nil {
		return err
	}
	descIn, err := getSimpleText(a.reader, "New description (empty = keep, '-' = clear)")
	if err != nil {
		return err
	}

	var title, description *string
	if titleIn != "" {
		title = &titleIn
	}
	if descIn == "-" {
		empty := ""
		description = &empty
	} else if descIn != "" {
		description = &descIn
	}
	if title == nil && description == nil {
		printlnFn("Nothing to update.")
		return nil
	}

	if _, err := a.client.UpdateTask(ctx, id, title, description); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Task updated.")
	return nil
}

// Done marks a task completed.
func (a *App) Done(ctx context.Context) error {
	return a.taskAction(ctx, a.client.CompleteTask, "Task marked as complete.")
}

// Undone marks a task incomplete.
func (a *App) Undone(ctx context.Context) error {
	return a.taskAction(ctx, a.client.IncompleteTask, "Task marked as incomplete.")
}

// Remove moves a task to the trash.
func (a *App) Remove(ctx context.Context) error {
	return a.taskAction(ctx, a.client.SoftDeleteTask, "Task moved to trash.")
}

// Restore brings a trashed task back as active.
func (a *App) Restore(ctx context.Context) error {
	return a.taskAction(ctx, a.client.RestoreTask, "Task restored.")
}

// Purge permanently deletes a trashed task.
func (a *App) Purge(ctx context.Context) error {
	return a.taskAction(ctx, a.client.HardDeleteTask, "Task permanently deleted.")
}

func (a *App) taskAction(ctx context.Context, fn func(context.Context, string) error, okMsg string) error {
	id, err := getSimpleText(a.reader, "Task ID")
	if err != nil {
		return err
	}
	if err := fn(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(okMsg)
	return nil
}
