package main

import (
	"yelagiri_booking/internal/adapter/cli"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Yelagiri Booking API
// @version         1.0
// @description     Booking, payment and invoice service for Yelagiri stays and activities, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cli.Execute()
}
