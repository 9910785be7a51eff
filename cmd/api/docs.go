package main

// @title           AI Restaurant POS API
// @version         1.0
// @description     Restaurant point of sale with a natural language assistant for menu, sales and table operations

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT authentication header using the Bearer scheme. Example: "Bearer {token}"
