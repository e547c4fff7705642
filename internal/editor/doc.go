// Package editor is a minimal rich-text editor host built on the engine
// packages.
//
// Editor state is immutable. A State holds the document, the selection and
// one value per registered plugin. Changes are described by a Transaction
// and applied with State.Apply, which produces a brand new State: every
// plugin's reducer receives the transaction together with its previous value
// and returns the next one.
//
// A View owns the current State and is the single entry point for changes:
//
//	st := editor.NewState(editor.Config{
//	    Doc:     buffer.NewDocument("hello "),
//	    Plugins: []editor.Plugin{tracker},
//	})
//	v := editor.NewView(st)
//
//	tr := v.Tr().ReplaceSelection("@wor")
//	if err := v.Dispatch(tr); err != nil {
//	    // handle
//	}
//
// Dispatch applies the transaction, commits the new state and then calls each
// plugin's Update hook with the previous and next plugin values. Transactions
// dispatched from inside an Update hook are queued and applied after the
// current one has finished, so hooks always observe transactions in order.
//
// Key events go through View.HandleKey: plugins get the first chance to
// consume them, then the default editing commands run.
package editor
