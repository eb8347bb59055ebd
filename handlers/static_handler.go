// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const homePage = `<html>
<head>
    <title>Project Bootstrapper API - Quickstart</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
        code { background-color: #f4f4f4; padding: 2px 4px; border-radius: 4px; }
        pre { background-color: #f4f4f4; padding: 10px; border-radius: 6px; overflow-x: auto; }
        h1, h2 { color: #333; }
    </style>
</head>
<body>
    <h1>Project Bootstrapper API - Quickstart</h1>
    <p>Welcome! Follow these steps to get started with the free tier.</p>

    <h2>1. Register &amp; Get API Key</h2>
    <pre>
POST /users
Content-Type: application/json

{
    "username": "yourname",
    "email": "you@example.com"
}
    </pre>
    <p>The response will include your <code>api_key</code> - save it.</p>

    <h2>2. List Templates</h2>
    <pre>
GET /templates
Headers:
X-API-Key: YOUR_API_KEY
    </pre>

    <h2>3. Create &amp; Download a Project</h2>
    <pre>
POST /create-and-download
Headers:
X-API-Key: YOUR_API_KEY
Content-Type: application/json

{
    "name": "myproject",
    "template": "flask"
}
    </pre>
    <p>This will download <code>myproject.zip</code> with your generated project.</p>

    <h2>Free Tier Limits</h2>
    <ul>
        <li>10 API calls/day</li>
        <li>5 projects/month</li>
        <li>Templates: flask, fastapi, basic-python</li>
    </ul>
</body>
</html>
`

// HomeHandler serves the quickstart page. It is not behind the API-key gate
// and does not count against any quota.
func (h *Handler) HomeHandler(c echo.Context) error {
	return c.HTML(http.StatusOK, homePage)
}

// HealthHandler reports service liveness.
func (h *Handler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
