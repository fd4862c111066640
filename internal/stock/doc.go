// Package stock implements cohort-based stock accounting over labeled
// arrays.
//
// A stock owns three arrays sharing one dimension set whose first axis is
// time: inflow, outflow and the accumulated stock. Each variant computes
// the missing quantities from the ones provided:
//
//   - [SimpleFlowDriven]: stock as the running sum of net inflow; no
//     lifetime model involved
//   - [InflowDriven]: outflow and stock from inflow plus a survival model
//   - [StockDriven]: inflow recovered from a target stock trajectory by
//     sequential cohort subtraction
//   - [StockDrivenInverse]: same result via an explicit triangular
//     inverse of the survival matrix, kept as a numerically independent
//     cross-check
//
// Inflow and outflow are annualized rates; on an uneven time grid the
// per-period amount is rate times interval length. Compute is explicit:
// nothing recomputes behind the caller's back.
package stock
