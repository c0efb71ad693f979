package rest

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("OpenAPI document", func() {
	ginkgo.It("should load and validate", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("../../../api/openapi.yml")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(doc.Validate(context.Background())).To(gomega.Succeed())
	})

	ginkgo.It("should document the permission matrix endpoints", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("../../../api/openapi.yml")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		matrix := doc.Paths.Find("/permissions/matrix")
		gomega.Expect(matrix).NotTo(gomega.BeNil())
		gomega.Expect(matrix.Get).NotTo(gomega.BeNil())
		gomega.Expect(matrix.Post).NotTo(gomega.BeNil())

		transfer := doc.Paths.Find("/tickets/{id}/transfer")
		gomega.Expect(transfer).NotTo(gomega.BeNil())
		gomega.Expect(transfer.Post).NotTo(gomega.BeNil())
	})
})
