//go:build !windows

package plotrec

// defaultBaseDPI is the logical pixel density assumed for plot sizes.
// Unix displays traditionally address logical pixels at 72 per inch.
const defaultBaseDPI = 72
