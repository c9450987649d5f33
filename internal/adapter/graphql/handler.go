package adaptgql

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// NewHandler parses the schema against r and returns the /graphql handler:
// POST executes operations, GET serves GraphiQL.
func NewHandler(r *Resolver) (http.Handler, error) {
	schema, err := graphql.ParseSchema(Schema, r)
	if err != nil {
		return nil, err
	}
	exec := &relay.Handler{Schema: schema}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			exec.ServeHTTP(w, req)
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(graphiqlPage)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}), nil
}

var graphiqlPage = []byte(`<!DOCTYPE html>
<html>
<head>
	<title>Weight Tracker GraphQL API</title>
	<link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
</head>
<body style="margin:0">
	<div id="graphiql" style="height:100vh"></div>
	<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
	<script>
		const fetcher = GraphiQL.createFetcher({ url: window.location.pathname });
		ReactDOM.createRoot(document.getElementById('graphiql')).render(React.createElement(GraphiQL, { fetcher }));
	</script>
</body>
</html>
`)
