// Package modus is a declarative data-modeling engine: describe a record type
// as a named set of typed, constrained fields, and get deserialization from
// loosely-typed input, serialization back to plain data, sanitization, and
// validation with aggregated per-field errors — uniformly for every declared
// type.
//
// A model type is a Schema, built once and immutable afterward:
//
//	var User = modus.NewSchema("User").
//		Field("id", modus.Snowflake().Required()).
//		Field("name", modus.String().MinLength(1).Sanitizers(modus.TrimSpace())).
//		Field("age", modus.Integer().Min(0).Max(150)).
//		MustBuild()
//
//	inst, err := modus.ParseJSON(User, payload)
//	if err != nil { ... }                  // malformed input: *SchemaError
//	if err := inst.Validate(); err != nil {
//		me, _ := modus.AsModelError(err)   // every violation, per field
//		respond(me.Flatten())
//	}
//
// Coercion failures (a non-numeric string fed to an Integer field) are hard
// *SchemaError failures raised by deserialization; constraint violations are
// soft, collected across the whole instance, and reported as one *ModelError.
// Schemas compose: Extend merges base schemas with deep-copied definitions,
// and Model nests one schema inside another with structured error
// propagation.
package modus
