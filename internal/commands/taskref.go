package commands

import (
	"errors"
	"fmt"
	"strconv"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from args. Tasks are referenced
// by their display number in the current listing, not by their server ID.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return num, nil
}

// findTaskByNumber resolves a 1-based display number against the loaded
// collection.
func findTaskByNumber(st *store.Store, num int) (service.Task, error) {
	tasks := st.Tasks()
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
