// Package language maps between ISO-639 language codes, human-readable
// names, and the colon-tag grammar ("en", "en:forced", "en:hi") used to
// persist subtitle language selectors.
package language
