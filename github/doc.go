// Package github implements listing.API over the GitHub REST API.
//
// Enumeration uses GET /users?since=<id>; search uses
// GET /search/users?q=<keyword>, whose records sit under "items". The next
// page is the rel="next" target of the Link header, used verbatim as the
// cursor.
//
// HTTP failures are mapped onto the error taxonomy: rejected credentials
// become AUTH_ERROR, every other network or HTTP failure TRANSPORT_ERROR,
// and a body that is not a page PROTOCOL_ERROR.
package github
