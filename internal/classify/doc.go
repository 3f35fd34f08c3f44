// Package classify maps free-text javac diagnostics to canonical categories.
//
// Classification is a pure function of the message text and runs in three
// ordered steps, first match wins:
//
//  1. Exact lookup in a closed table of messages with no variable parts.
//  2. A linear scan of an ordered pattern catalog. Each pattern is anchored at
//     the start of the message and may match only a prefix of it, since many
//     javac messages end with free-form segments.
//  3. Otherwise the message is unmatched and kept verbatim.
//
// Matched patterns collapse every instance message into the pattern's
// signature, a fixed representative message. Signatures follow one theme:
// user-defined types are ducks (Duck, Mallard, quack(), scroogeMcduck).
//
// "Sanitized" follows Pritchard, Frequency Distribution of Error Messages
// (2015): the parts of a message that pertain to the user's code are removed
// so that each category corresponds to a single place in the compiler where
// the error is detected.
package classify
