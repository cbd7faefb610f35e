package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/webcms/cms-api/cmd/app"
)

// @title           Website CMS API
// @version         1.0
// @description     Events with registrations, actualities, publications, gallery, financing and training requests, newsletter.
//
// @contact.name   API Support
// @contact.email  support@webcms.dev
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @BasePath  /api/v1
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
