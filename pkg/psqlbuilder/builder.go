package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder avec les placeholders PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select crée un SelectBuilder avec placeholders $N
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert crée un InsertBuilder avec placeholders $N
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update crée un UpdateBuilder avec placeholders $N
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete crée un DeleteBuilder avec placeholders $N
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
