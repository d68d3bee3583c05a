// Package openapi embeds the OpenAPI 3 document of the JSON submission API
// and loads it with kin-openapi. The server publishes the raw document and
// checks request bodies against its component schemas.
package openapi
