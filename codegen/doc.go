// Package codegen generates explicit binding descriptors for tagged
// struct types.
//
// For each struct of a package carrying xdom tags, it emits a
// schema.DefineStruct registration equivalent to the tags, in a
// *_xdom.go file. Registered descriptors replace tag parsing at run time
// and fix the binding in source where it can be reviewed.
//
// # Related Packages
//
//   - github.com/signadot/xdom/schema - descriptors and registry
//   - github.com/signadot/xdom/cmd/xdom-gen - command line front end
package codegen
