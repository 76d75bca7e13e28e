package diag

// Classification of compilation failures.
// ENUM(syntax, unsupported, unresolved, argument, arithmetic, structural)
type Kind int
