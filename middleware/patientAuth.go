package middleware

import (
	"context"

	patientRepo "medibook/database/repository/patient"

	"github.com/gin-gonic/gin"
)

// JWTAuthPatientMiddleware authenticates a patient from the Authorization header.
func JWTAuthPatientMiddleware(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return authMiddleware("patient", "patientID", func(ctx context.Context, id string) bool {
		_, err := repo.GetByID(ctx, id)
		return err == nil
	})
}
