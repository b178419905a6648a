// Package mux implements the parameter-multiplexing engine: it parses an HCL
// variants file and expands it into concrete parameter sets, either filtered
// to one test identifier or globally.
//
// A variants file is a sequence of variant blocks:
//
//	variant "short" {
//	  test = "sleeptest"
//	  params = {
//	    sleep_length = "0.5"
//	  }
//	}
//
// Each block yields one parameter set. Its shortname is "<test>.<label>"
// unless the params already define shortname explicitly.
package mux
