// Package render turns resolved pages into complete HTML documents.
//
// Resolve loads a page's sibling content from disk. Renderer.Render then
// resolves cross references through the link table, highlights
// implementation listings and executes the layout for the page variant.
// Every document shares the base layout: head assets, breadcrumb
// navigation, title and footer.
package render
