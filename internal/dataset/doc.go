// Package dataset loads and validates the precomputed clustering and mass
// function tables that the viewer browses.
//
// A Dataset is built once from a JSON document and is read-only afterwards,
// so a single handle can be shared by every query, statistic and renderer.
// Curves are addressed by a Key, an index tuple whose length is the
// dataset's arity: (parameter, value) for the one-parameter-at-a-time scan
// layout, and one value index per parameter for the grid layout.
package dataset
