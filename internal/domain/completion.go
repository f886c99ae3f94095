package domain

// DeriveCompletion returns the completion flag a task must carry given its
// subtasks: false when there are none, otherwise true only if every subtask
// is completed.
func DeriveCompletion(subtasks []Subtask) bool {
	if len(subtasks) == 0 {
		return false
	}
	for _, s := range subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

// RecomputeCompletion sets t.Completed from its current subtasks.
func (t *Task) RecomputeCompletion() {
	t.Completed = DeriveCompletion(t.Subtasks)
}

// AddSubtask appends s. The completion flag is only recomputed when the
// task already had subtasks; a task completed on its own keeps its flag
// until the next subtask change.
func (t *Task) AddSubtask(s Subtask) {
	hadSubtasks := len(t.Subtasks) > 0
	t.Subtasks = append(t.Subtasks, s)
	if hadSubtasks {
		t.RecomputeCompletion()
	}
}

// ReplaceSubtask swaps in s for the subtask with the same ID and recomputes
// completion. It reports whether a subtask was replaced.
func (t *Task) ReplaceSubtask(s Subtask) bool {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == s.ID {
			t.Subtasks[i] = s
			t.RecomputeCompletion()
			return true
		}
	}
	return false
}

// RemoveSubtask drops the subtask with the given ID and recomputes
// completion. It reports whether a subtask was removed.
func (t *Task) RemoveSubtask(id int64) bool {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			t.Subtasks = append(t.Subtasks[:i:i], t.Subtasks[i+1:]...)
			t.RecomputeCompletion()
			return true
		}
	}
	return false
}

// FindSubtask returns the subtask with the given ID.
func (t Task) FindSubtask(id int64) (Subtask, bool) {
	for _, s := range t.Subtasks {
		if s.ID == id {
			return s, true
		}
	}
	return Subtask{}, false
}
