package controller

import (
	"context"
	"fmt"

	"filelib-cli/internal/model"

	"github.com/sirupsen/logrus"
)

// RequestDelete opens the delete confirmation when something is checked.
func RequestDelete(s State) (State, bool) {
	if len(Selected(s)) == 0 {
		return s, false
	}
	return OpenModal(s, ModalConfirmDelete), true
}

// ConfirmDelete closes the confirmation and returns the entries to delete.
func ConfirmDelete(s State) (State, []model.FileEntry, error) {
	if s.Deleting {
		return s, nil, ErrDeleteInFlight
	}
	targets := Selected(s)
	out := CloseModal(s, ModalConfirmDelete).clone()
	if len(targets) == 0 {
		return out, nil, nil
	}
	out.Deleting = true
	return out, targets, nil
}

type DeleteResult struct {
	Requested int
	Deleted   int
	Err       error
}

// DeleteEntries deletes entries one by one and stops at the first failure.
func (c *Controller) DeleteEntries(ctx context.Context, entries []model.FileEntry) DeleteResult {
	res := DeleteResult{Requested: len(entries)}
	for _, e := range entries {
		target := c.Resolve(e.Path)
		if err := c.client.Delete(ctx, c.libraryID, target); err != nil {
			logrus.WithError(err).WithField("path", target).Warn("delete failed")
			res.Err = err
			return res
		}
		res.Deleted++
	}
	return res
}

func FinishDelete(s State, res DeleteResult) (State, []Effect) {
	out := s.clone()
	out.Deleting = false
	if res.Err == nil {
		if res.Requested == 0 {
			return out, nil
		}
		return out, []Effect{{Kind: EffectReload}}
	}
	msg := fmt.Sprintf("Deleted %d of %d entries: %v", res.Deleted, res.Requested, res.Err)
	return ShowAlert(out, msg)
}
