package queries

const USER_BY_USERNAME = `
	SELECT U.id, U.username, U.password, U.name, U.type
	FROM user U
	WHERE U.username = ?`

const CUSTOMERS = `
	SELECT C.id, C.name, C.nic, C.phone, C.loan_status, C.sales_status, S.sale_type, V.model, S.sale_date
	FROM customer C
	LEFT JOIN sale S ON S.customer_id = C.id
	LEFT JOIN vehicle V ON V.id = S.vehicle_id
	ORDER BY C.created DESC`

const CUSTOMER_BY_ID = `
	SELECT C.id, C.name, C.nic, C.phone, C.email, C.address, C.loan_status, C.sales_status, C.created
	FROM customer C
	WHERE C.id = ?`

const CUSTOMER_NAMES = `
	SELECT C.id, C.name
	FROM customer C`

const CUSTOMER_IDS_WITH_SALES = `
	SELECT DISTINCT S.customer_id
	FROM sale S`

const CUSTOMER_DOCUMENTS = `
	SELECT CD.id, CD.name, CD.s3bucket, CD.s3region, CD.source, CD.created
	FROM customer_document CD
	WHERE CD.customer_id = ?
	ORDER BY CD.created DESC`

const SALES = `
	SELECT S.id, S.customer_id, S.vehicle_id, S.sale_type, S.total_amount, S.paid_amount, S.remaining_amount,
		S.loan_amount, S.installment_amount, S.tenure_months, S.first_installment_date,
		S.last_payment_date, S.last_accrual_date, S.loan_status, S.sales_status, S.sale_date
	FROM sale S`

const SALE_BY_ID = SALES + `
	WHERE S.id = ?`

const SALE_BY_CUSTOMER = SALES + `
	WHERE S.customer_id = ?`

const INSTALLMENTS = `
	SELECT I.id, I.sale_id, I.seq_no, I.due_date, I.principal, I.interest, I.amount,
		I.remaining_principal, I.state, I.overdue_charge, I.paid_date
	FROM installment I`

const INSTALLMENTS_BY_SALE = INSTALLMENTS + `
	WHERE I.sale_id = ?
	ORDER BY I.seq_no`

const VEHICLES = `
	SELECT V.id, V.model, V.chassis_number, V.price, V.status, V.created
	FROM vehicle V
	ORDER BY V.created DESC`

const VEHICLE_BY_ID = `
	SELECT V.id, V.model, V.chassis_number, V.price, V.status, V.created
	FROM vehicle V
	WHERE V.id = ?`

const BATTERIES = `
	SELECT B.id, B.serial_number, B.model, B.capacity, B.price, B.status, B.created
	FROM battery B
	ORDER BY B.created DESC`

const BATTERY_BY_ID = `
	SELECT B.id, B.serial_number, B.model, B.capacity, B.price, B.status, B.created
	FROM battery B
	WHERE B.id = ?`

const BATTERY_SALES = `
	SELECT BS.id, BS.reference, BS.battery_id, BS.customer_name, BS.amount, BS.sale_date
	FROM battery_sale BS
	ORDER BY BS.sale_date DESC`

const ENQUIRIES = `
	SELECT E.id, E.reference, E.name, E.phone, E.vehicle_model, E.message, E.status, E.created
	FROM enquiry E
	ORDER BY E.created DESC`
