/*
Package errors provides the error taxonomy of the key registry.

Every failure the registry reports is one of the sentinel errors below, usually
wrapped in a KeyError (which carries the entity type and key coordinates) or a
RegistrationError (which carries the registration stage that rejected the
entity). Sentinels belong to a class, so callers can test either the precise
failure or its family with the standard errors.Is:

	Definition errors (malformed entity type, matches ErrDefinition):
	    ErrMissingPrimaryKey, ErrMultiplePrimaryKeys, ErrDuplicateKeyName,
	    ErrPrimaryAlternateConflict, ErrInvalidKeyType, ErrStringAutoNotSupported

	Value errors (per instance, matches ErrInvalidValue):
	    ErrMissingMandatoryValue, ErrAutoValueConflict, ErrDuplicateKeyValue

	Generation errors (matches ErrGeneration):
	    ErrUnsupportedAutoKeyType, ErrKeyGenerationExhausted

	Query errors:
	    ErrUnknownKeyName

	Internal:
	    ErrUnresolvableKeyField

Usage:

	err := reg.Register(country)
	if err != nil {
	    if errors.IsAlreadyExists(err) {
	        // another entity already owns one of the unique key values
	    }
	    if errors.IsDefinitionError(err) {
	        // the entity type itself is malformed
	    }
	    return err
	}

A key that is declared but holds no matching value is not an error: lookups
return an empty result. ErrUnknownKeyName is reserved for names that are not
declared keys of the entity type.
*/
package errors
