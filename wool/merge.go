package wool

import (
	"context"
	"fmt"
)

// MergeAction is what the cross-module merge did with a class.
type MergeAction int

const (
	// MergeRelocated moved the class to the registry of its declaring module.
	MergeRelocated MergeAction = iota
	// MergeDropped removed the class because its declaring module already
	// held one of the same name.
	MergeDropped
)

func (a MergeAction) String() string {
	switch a {
	case MergeRelocated:
		return "relocated"
	case MergeDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// MergeRecord describes one decision of the cross-module merge.
type MergeRecord struct {
	Class  string
	From   string
	To     string
	Action MergeAction
	// Diff holds the member names present in only one of the two classes of a
	// dropped pair.
	Diff []string
}

func (r MergeRecord) String() string {
	return fmt.Sprintf("%s %s: %s -> %s", r.Action, r.Class, r.From, r.To)
}

// Merge moves every class to the registry of the module that declared its
// node. When that registry already holds a class of the same name the moved
// one is dropped, reporting a conflict if the member names differ.
//
// Merge fails with ErrNotWrapped unless every module of the batch completed
// its wrap pass. Calling it again after a successful merge is a no-op.
func (b *Batch) Merge(ctx context.Context) ([]MergeRecord, error) {
	_, span := tracer.Start(ctx, "Merge")
	defer span.End()

	for _, m := range b.modules.Values() {
		if !m.wrapped {
			return nil, fmt.Errorf("merging batch: %w: %s", ErrNotWrapped, m.Name)
		}
	}
	if b.merged {
		return nil, nil
	}

	var records []MergeRecord
	for _, holder := range b.modules.Values() {
		for _, c := range holder.Classes() {
			owner := c.Node.OrigModule
			if owner == "" || owner == holder.Name {
				continue
			}
			target, ok := b.modules.Get(owner)
			if !ok {
				if err := b.warn(ErrMalformedTree, holder.Name, "declaring module of class not in batch", "class", c.Name, "owner", owner); err != nil {
					return records, err
				}
				continue
			}

			rec := MergeRecord{Class: c.Name, From: holder.Name, To: owner}
			if existing, ok := target.Class(c.Name); ok {
				rec.Action = MergeDropped
				rec.Diff = memberDiff(existing, c)
				if len(rec.Diff) > 0 {
					if err := b.warn(ErrMergeConflict, holder.Name, "duplicate class differs from the declaring module's",
						"class", c.Name, "owner", owner, "diff", rec.Diff); err != nil {
						return records, err
					}
				}
			} else {
				rec.Action = MergeRelocated
				target.classes.Set(c.Name, c)
			}
			holder.removeClass(c.Name)
			mergeActions.WithLabelValues(rec.Action.String()).Inc()
			b.logger.Debug("merged class", "class", c.Name, "from", rec.From, "to", rec.To, "action", rec.Action.String())
			records = append(records, rec)
		}
	}

	b.merged = true
	return records, nil
}
