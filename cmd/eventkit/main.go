// Eventkit checks event records against the editor's draft and public
// rule tables and expands recurring-event forms into sub-events.
//
// Usage:
//
//	# Run the HTTP API
//	eventkit serve
//
//	# Validate a record before publishing
//	eventkit validate --intent public event.json
//
//	# Validate an API event read from stdin, with Finnish messages
//	cat event.json | eventkit validate --wire --messages fi -
//
//	# Expand a recurrence form
//	eventkit expand recurrence.yaml
//
//	# Show the public rule table
//	eventkit rules --intent public --output yaml
package main

func main() {
	Execute()
}
