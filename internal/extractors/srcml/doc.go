// Package srcml extracts compiler diagnostics from srcML-annotated source files.
//
// Each file holds compile units (unit elements) at successive edit versions.
// Units that failed to compile carry compile-success="false" and an ordered
// list of compile-error children:
//
//	<unit version="3" compile-success="false">
//	  <compile-error start="4:9" end="4:14">cannot find symbol -   class Sytem</compile-error>
//	  <compile-error start="7:1" end="7:2">';' expected</compile-error>
//	  ...
//	</unit>
//
// Errors are ranked from 1 in document order within their unit. Rank 1 is the
// first error the user saw and must never be reordered.
package srcml
