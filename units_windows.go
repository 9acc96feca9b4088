//go:build windows

package plotrec

// defaultBaseDPI is the logical pixel density assumed for plot sizes.
// Windows addresses logical pixels at 96 per inch.
const defaultBaseDPI = 96
