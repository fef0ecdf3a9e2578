// Command subplot indexes subtitles across a media library, scores release
// candidates, and reports which languages each video still needs.
package main
