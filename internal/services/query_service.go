package services

import (
	"sort"
	"strings"

	"taskdeck.com/taskdeck/internal/constants"
	model "taskdeck.com/taskdeck/internal/models"
)

// Filters narrows a task snapshot. Status and Priority match exactly;
// the empty string and "all" disable the field. Search is a trimmed
// case-insensitive substring match over title, description and category.
type Filters struct {
	Status   string
	Priority string
	Search   string
}

type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
}

// Filter never mutates its input; it derives a fresh slice from the snapshot.
func Filter(tasks []model.Task, f Filters) []model.Task {
	result := make([]model.Task, 0, len(tasks))

	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, task := range tasks {
		if f.Status != "" && f.Status != constants.FilterAll && string(task.Status) != f.Status {
			continue
		}
		if f.Priority != "" && f.Priority != constants.FilterAll && string(task.Priority) != f.Priority {
			continue
		}
		if search != "" && !matchesSearch(task, search) {
			continue
		}
		result = append(result, task)
	}

	return result
}

func matchesSearch(task model.Task, search string) bool {
	return strings.Contains(strings.ToLower(task.Title), search) ||
		strings.Contains(strings.ToLower(task.Description), search) ||
		strings.Contains(strings.ToLower(task.Category), search)
}

// Aggregate counts tasks by status. A status outside the known set still
// counts toward Total.
func Aggregate(tasks []model.Task) Stats {
	stats := Stats{Total: len(tasks)}

	for _, task := range tasks {
		switch task.Status {
		case constants.StatusCompleted:
			stats.Completed++
		case constants.StatusPending:
			stats.Pending++
		case constants.StatusInProgress:
			stats.InProgress++
		}
	}

	return stats
}

// Recent returns the n most recently created tasks, newest first. Ties keep
// their snapshot order.
func Recent(tasks []model.Task, n int) []model.Task {
	if n < 0 {
		n = 0
	}

	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
