// Package ecoute provides the scraping core of a personal French-listening
// exercise tracker. It discovers listening/quiz exercises on a public
// broadcaster's site, extracts structured fields through layered fallback
// heuristics, and assigns each exercise a stable URL-derived short ID.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package ecoute
