// Package internal ties the grammar and the proof checker together.
//
// Engine loads proof files, parses every premise and step with the
// configured grammar, and checks the steps against a named logic:
//
//	cfg, err := config.Load("natlog.yaml")
//	if err != nil {
//	    // handle error
//	}
//	lib, err := config.Build(cfg)
//	if err != nil {
//	    // handle error
//	}
//
//	engine := internal.NewEngine(lib, logger)
//	reports, err := engine.Run("proofs.yaml")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, r := range reports {
//	    fmt.Printf("%s: valid=%v\n", r.Name, r.Valid())
//	}
//
// A proof file is a yaml document with a list of proofs:
//
//	proofs:
//	  - name: barbara
//	    logic: all-and-some
//	    premises:
//	      - all dogs are pets
//	      - all pets are sweethearts
//	    steps:
//	      - all dogs are sweethearts
//
// Parse results are cached per token sequence for the lifetime of the
// engine, so premises shared between proofs are parsed once.
package internal
