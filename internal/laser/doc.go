// Package laser implements the engineering calculators behind the laser
// equipment site: kerf width, power density, chiller sizing, cutting cost
// and nozzle life.
//
// Every calculator is a pure function from an input record to an output
// record. Inputs are validated before anything is computed; a violated range
// returns a *ValidationError and a zero output. Outputs are rounded only at
// the point of return.
package laser
