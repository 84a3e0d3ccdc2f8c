// Package serialization saves and loads trainer parameter vectors.
//
// The parameter file is plain text with one decimal value per line, line i
// holding parameter i:
//
//	0.5
//	-1.25
//	3e-07
//
// Values are written with the shortest representation that parses back to
// the same float64, so a save followed by a load reproduces the vector
// exactly. The file carries no header or version.
//
// Loading is lenient: a line that does not parse leaves its parameter
// unchanged, a short file leaves the trailing parameters unchanged and
// surplus lines are ignored. Each of these is logged and listed in the
// returned Report.
//
// Example usage:
//
//	if err := serialization.SaveFile("model.txt", params); err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := serialization.LoadFile("model.txt", params, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("loaded=%d malformed=%d", report.Applied, len(report.Malformed))
package serialization
