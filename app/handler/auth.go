package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	m "assetmaster/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userIdKey = "userId"

const tokenTTL = 24 * time.Hour

type UserStore interface {
	UserRetrierver
	UserSaver
}

type AuthHandler struct {
	us      UserStore
	authKey []byte
	now     func() time.Time
}

func NewAuthHandler(us UserStore, authKey string) *AuthHandler {
	return &AuthHandler{
		us:      us,
		authKey: []byte(authKey),
		now:     time.Now,
	}
}

// InitRoute registers the public auth routes and protects every route registered after it.
func (h *AuthHandler) InitRoute(app *fiber.App) {

	router := app.Group("/auth")
	router.Post("/register", h.Register)
	router.Post("/login", h.Login)

	app.Use(h.AuthMiddleware)
}

// Claims represents the JWT claims
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {

	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("비밀번호 해시 시 오류 발생. %w", err)
	}

	user := &m.User{Email: req.Email, Password: string(hashed)}
	if err := h.us.SaveUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "이미 가입된 email")
		}
		return fmt.Errorf("SaveUser 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {

	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.us.User(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "email 또는 비밀번호 불일치")
		}
		return fmt.Errorf("User 조회 시 오류 발생. %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "email 또는 비밀번호 불일치")
	}

	now := h.now()
	expirationTime := now.Add(tokenTTL)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.authKey)
	if err != nil {
		return fmt.Errorf("토큰 서명 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(JWTResponse{
		Token:  tokenString,
		Expiry: expirationTime.Unix(),
	})
}

// AuthMiddleware verifies the bearer token and stores the user id in the request locals.
func (h *AuthHandler) AuthMiddleware(c *fiber.Ctx) error {

	tokenString, err := bearerToken(c)
	if err != nil {
		return err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.authKey, nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(userIdKey, claims.UserID)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, error) {

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "authorization header missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "invalid authorization format")
	}
	return tokenParts[1], nil
}
