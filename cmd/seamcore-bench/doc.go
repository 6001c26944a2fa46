/*Command seamcore-bench exercises the seam-placement façade against a
  synthetic model: a stack of concentric-square layers with an optional
  hole, run through placer.Init and placer.PlaceSeam under a chosen
  strategy. It reports wall-clock time for Init and for the full
  PlaceSeam sweep.

  There is no mesh or G-code I/O here — this module treats both as
  external collaborators (spec.md §6) — so seamcore-bench only ever
  exercises the in-memory seam-selection core on data it generates
  itself.

  Usage: seamcore-bench --strategy=aligned --layers=200 --holes
*/
package main
