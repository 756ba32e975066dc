// Package ops implements the document operations behind artkit's commands
// and runs them with copy-on-write preview.
//
// An [Operation] mutates the document it is given. [Runner.Preview] never
// hands it the caller's document: it applies the operation to a clone and
// returns both versions, so the caller can show a diff and then commit or
// discard. Nothing is undone after the fact.
//
//	r := ops.NewRunner(logger)
//	p, err := r.Preview(ctx, doc, ops.Align{Horizontal: ops.AlignCenter})
//	if err != nil {
//	    return err
//	}
//	doc, err = p.Commit()
package ops
