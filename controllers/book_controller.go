package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/models"
	"bookstore/services"
)

type BookController struct {
	books *services.BookService
	log   *zap.SugaredLogger
}

func NewBookController(books *services.BookService, log *zap.SugaredLogger) *BookController {
	return &BookController{books: books, log: log}
}

func (bc *BookController) GetBooks(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	books, err := bc.books.List(ctx)
	if err != nil {
		writeError(c, bc.log, err, "Failed to fetch all books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": books})
}

func (bc *BookController) GetBook(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := bc.books.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, bc.log, err, "Failed to fetch the book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": book})
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := bc.books.Create(ctx, input)
	if err != nil {
		writeError(c, bc.log, err, "An error occurred while creating the book")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": book})
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var body models.BookUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	book, err := bc.books.Update(ctx, c.Param("id"), body)
	if err != nil {
		writeError(c, bc.log, err, "Failed to update book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": book})
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := bc.books.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, bc.log, err, "Failed to delete book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Book deleted successfully"})
}
